package render

const landingBody = `
        <section class='max-w-6xl mx-auto px-6 py-16 grid md:grid-cols-3 gap-8'>
          <div class='p-6 rounded-xl border border-slate-200/20 bg-white/5'>
            <h3 class='text-xl font-semibold text-white'>Problem</h3>
            <p class='mt-2 text-slate-300'>Describe the pain point your product solves.</p>
          </div>
          <div class='p-6 rounded-xl border border-slate-200/20 bg-white/5'>
            <h3 class='text-xl font-semibold text-white'>Solution</h3>
            <p class='mt-2 text-slate-300'>Show how you uniquely address the problem.</p>
          </div>
          <div class='p-6 rounded-xl border border-slate-200/20 bg-white/5'>
            <h3 class='text-xl font-semibold text-white'>Proof</h3>
            <p class='mt-2 text-slate-300'>Add testimonials, metrics, or social proof.</p>
          </div>
        </section>
        <section class='max-w-6xl mx-auto px-6 pb-20'>
          <div class='rounded-2xl border border-slate-200/20 bg-white/5 p-6'>
            <h3 class='text-xl font-semibold text-white'>Call to Action</h3>
            <div class='mt-4 flex gap-3'>
              <input placeholder='Email address' class='px-4 py-3 rounded-lg bg-white/10 text-white placeholder-slate-400 outline-none w-full md:w-72'>
              <button class='px-5 py-3 rounded-lg bg-blue-600 hover:bg-blue-500 transition'>Join Waitlist</button>
            </div>
          </div>
        </section>
`

const dashboardBody = `
        <section class='max-w-6xl mx-auto px-6 py-16'>
          <div class='grid md:grid-cols-4 gap-6'>
            <div class='col-span-4 grid sm:grid-cols-4 gap-4'>
              <div class='p-4 rounded-xl bg-white/5 border border-slate-200/20'>
                <p class='text-slate-400 text-sm'>Active Users</p>
                <p class='text-2xl font-bold text-white'>1,284</p>
              </div>
              <div class='p-4 rounded-xl bg-white/5 border border-slate-200/20'>
                <p class='text-slate-400 text-sm'>MRR</p>
                <p class='text-2xl font-bold text-white'>$8,920</p>
              </div>
              <div class='p-4 rounded-xl bg-white/5 border border-slate-200/20'>
                <p class='text-slate-400 text-sm'>Churn</p>
                <p class='text-2xl font-bold text-white'>2.4%</p>
              </div>
              <div class='p-4 rounded-xl bg-white/5 border border-slate-200/20'>
                <p class='text-slate-400 text-sm'>Tickets</p>
                <p class='text-2xl font-bold text-white'>37</p>
              </div>
            </div>
            <div class='col-span-3 mt-6 rounded-xl bg-white/5 border border-slate-200/20 p-6'>
              <h3 class='text-white font-semibold'>Usage Over Time</h3>
              <div class='mt-4 h-48 rounded-lg bg-gradient-to-r from-blue-500/20 to-cyan-500/20'></div>
            </div>
            <div class='col-span-1 mt-6 rounded-xl bg-white/5 border border-slate-200/20 p-6'>
              <h3 class='text-white font-semibold'>Tasks</h3>
              <ul class='mt-2 space-y-2 text-slate-300'>
                <li>Follow up with leads</li>
                <li>Review signups</li>
                <li>Plan onboarding</li>
              </ul>
            </div>
          </div>
        </section>
`

const ecommerceBody = `
        <section class='max-w-6xl mx-auto px-6 py-16'>
          <div class='grid sm:grid-cols-2 md:grid-cols-3 gap-6'>
            <div class='rounded-xl overflow-hidden bg-white/5 border border-slate-200/20'>
              <div class='h-40 bg-gradient-to-br from-blue-400 to-cyan-400'></div>
              <div class='p-4'>
                <p class='text-white font-semibold'>Starter Plan</p>
                <p class='text-slate-300'>$19</p>
                <button class='mt-3 w-full px-4 py-2 rounded-lg bg-blue-600 hover:bg-blue-500'>Add to Cart</button>
              </div>
            </div>
            <div class='rounded-xl overflow-hidden bg-white/5 border border-slate-200/20'>
              <div class='h-40 bg-gradient-to-br from-purple-400 to-pink-400'></div>
              <div class='p-4'>
                <p class='text-white font-semibold'>Pro Plan</p>
                <p class='text-slate-300'>$49</p>
                <button class='mt-3 w-full px-4 py-2 rounded-lg bg-blue-600 hover:bg-blue-500'>Add to Cart</button>
              </div>
            </div>
            <div class='rounded-xl overflow-hidden bg-white/5 border border-slate-200/20'>
              <div class='h-40 bg-gradient-to-br from-emerald-400 to-teal-400'></div>
              <div class='p-4'>
                <p class='text-white font-semibold'>Enterprise</p>
                <p class='text-slate-300'>$199</p>
                <button class='mt-3 w-full px-4 py-2 rounded-lg bg-blue-600 hover:bg-blue-500'>Contact Sales</button>
              </div>
            </div>
          </div>
        </section>
`

const blogArticle = `## Introducing Our New Prototype

This is a minimal blog layout generated for your idea. Replace this text with your own content and publish.

### Why it matters

- Fast to iterate
- Simple to customize
- Clean, modern design
`

func blogBody(article string) string {
	return `
        <section class='max-w-3xl mx-auto px-6 py-16'>
          <article class='prose prose-invert'>
` + article + `          </article>
          <div class='mt-10 grid gap-6 sm:grid-cols-2'>
            <a class='p-4 rounded-xl bg-white/5 border border-slate-200/20 block'>How we validate product ideas</a>
            <a class='p-4 rounded-xl bg-white/5 border border-slate-200/20 block'>Designing dashboards that delight</a>
          </div>
        </section>
`
}
